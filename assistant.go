// Package assistant provides a documentation assistant for the OpenSim
// biomechanics toolkit. It crawls a fixed set of documentation sites,
// extracts and chunks page content, indexes the chunks for semantic
// search, and answers free-text questions with the most relevant chunk
// plus source citations.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// goquery/, gemini/).
package assistant
