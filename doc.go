// Package cmdtree resolves command-line arguments against a statically declared hierarchy of
// commands. It features nested branches, default commands at any level, grouped short options and
// a strict or relaxed policy for arguments it cannot bind.
//
// The package only classifies and structures tokens. It does not convert values, enforce required
// parameters, execute commands or render help. A [Model] describes the commands, [Parse] turns the
// arguments into a [Result] holding the resolved [CommandTree] and the [RemainingArguments], and
// failures are reported as [*Error] values carrying the offending position and, where it helps,
// suggestions for what the user may have meant.
package cmdtree
