/*
Package rumetaphone implements a phonetic encoding for Russian personal names
and words, a "Russian metaphone".

Words which sound alike but are spelled differently (soft signs, unstressed
vowels, voiced consonants pronounced unvoiced) are mapped to the same key:

	"Спиридонова маргарита афанасьевна" => "СПИРИДАН9 МАРГАРИТА АФАНАС!"
	"спередонова моргорита офонасевна"  => "СПИРИДАН9 МАРГАРИТА АФАНАС!"

Keys are meant to be stored in a search index, so the encoding has to stay
stable across versions. Every step of the pipeline is driven by ordered rule
tables (see Tables), which are compiled once and never changed afterwards:

	normalize      upper-case, drop anything but Cyrillic letters, blanks and '-'
	tokenize       split at runs of blanks and hyphens
	fold suffixes  first matching surname/patronymic suffix => sentinel symbol
	reduce vowels  every vowel rule, cumulatively
	devoice        first matching final voiced consonant => unvoiced
	collapse       drop repeated letters, devoice unprotected consonants
	join           tokens separated by single blanks

Encoders are safe for concurrent use.

The algorithm follows a description from http://forum.aeroion.ru/topic461.html.

# Rule Tables

Custom tables may be streamed into LoadTables from any RuleReader. Package
rulefile reads and writes a small TeX-flavoured text format for them.

----------------------------------------------------------------------

# BSD License

Copyright (c) The es-ru-metaphone Authors

All rights reserved.

License information is available in the LICENSE file.
*/
package rumetaphone

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'rumetaphone'
func tracer() tracing.Trace {
	return tracing.Select("rumetaphone")
}
