// Package logger provides structured, leveled logging for callscore built on
// zerolog. It supports console and JSON output, named component loggers, and
// a set of standard field keys used across the pipeline.
package logger
