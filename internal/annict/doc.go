// Package annict provides the minimal Annict GraphQL client used to fetch the
// works airing in one broadcast season.
//
// A single fixed query is issued per fetch, parameterized only by the season
// token and ordered by watcher count as the API returns it. Responses are
// normalized into catalog.Work values here, so wrapper-list vs flat-list
// staff/cast shapes, embedded season years, and the several image shapes
// never leak past this package. Options allow tests to supply custom HTTP
// clients and endpoints.
package annict
