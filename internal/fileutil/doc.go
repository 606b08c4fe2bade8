// Package fileutil holds small filesystem helpers shared by cour packages.
package fileutil
