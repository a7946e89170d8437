// Package logger records shell session events as newline delimited JSON so
// sessions can be audited and summarized after the fact.
package logger
