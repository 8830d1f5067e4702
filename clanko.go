// Package clanko extracts a single article from a session-gated news site and
// renders it into a portable document: front-matter metadata followed by
// plain body text, ready for conversion to PDF or other formats.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, sqlite/, yaml/).
package clanko
