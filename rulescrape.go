// Package rulescrape scrapes a regulatory agency's proposed-rules listing,
// enriches each rule with text pulled from its chapter PDFs, and persists
// the result as a JSON file.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, pdfcpu/, dateparser/).
package rulescrape
