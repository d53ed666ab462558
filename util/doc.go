// Package util provides small shared helpers used across callscore.
package util
