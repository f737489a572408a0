// Package pagemeta provides link-preview metadata lookup for web pages.
// Given a URL it fetches the page, parses the HTML and returns the page
// title, description and Open Graph image.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, cascadia/, echo/).
package pagemeta
