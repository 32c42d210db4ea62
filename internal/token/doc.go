// Package token defines lexical token kinds and trivia for the C# subset read by strcheck.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span, except that
//     non-ASCII identifiers are NFC-normalised.
//   - Preprocessor lines (#region, #if ...) are trivia, never tokens.
//   - Contextual keywords (get, set, var, value, nameof) are identifiers; the parser
//     recognises them by text.
//   - Interpolated strings are a single InterpStringLit token; holes are lexed
//     later by the parser at their real file offsets.
package token
