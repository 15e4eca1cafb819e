// Package weneda resolves named placeholders embedded in free-form text.
//
// A placeholder is a delimited span such as {name}. The formatter scans the
// input once, left to right, and replaces each matched span with the value
// produced by the first registered resolver eligible for its body:
//
//	f := weneda.MustNew()
//	f.MustRegister(weneda.NewMapResolver("vars", map[string]string{
//	    "name": "Alex",
//	    "day":  "monday",
//	}))
//
//	out, err := f.Format(ctx, "Hello, {name}! Today is {day}.")
//	// out: "Hello, Alex! Today is monday."
//
// # Nesting
//
// Placeholders may nest. Inner placeholders are resolved first, so the
// resolver for an outer placeholder always receives a body whose inner spans
// have already been substituted:
//
//	"{upper:{name}}"  ->  resolver for "upper:..." sees "upper:Alex"
//
// Replacement text is never re-scanned, so resolver output containing
// delimiter tokens cannot trigger further expansion.
//
// # Escaping
//
// The escape token (default "\") suppresses the special meaning of an
// immediately following opener or closer, and an escaped escape renders as a
// single literal escape token:
//
//	`\{name}`  ->  "{name}" (left untouched)
//
// # Custom Resolvers
//
// Implement the Resolver interface, or wrap a function:
//
//	f.MustRegister(weneda.NewResolverFunc("greet", regexp.MustCompile(`^greet:`),
//	    func(ctx context.Context, raw string, depth int) (string, bool, error) {
//	        return "Hello, " + strings.TrimPrefix(raw, "greet:") + "!", true, nil
//	    }))
//
// A resolver with a nil pattern is eligible for every body that reaches it;
// dispatch is strictly first-registered-wins. Returning ok=false leaves the
// placeholder verbatim in the output, which is distinct from returning an
// empty string.
//
// # Error Handling
//
// Malformed placeholder syntax is never an error: stray or unterminated
// delimiters degrade to literal text. Errors are reserved for invalid
// delimiter configuration, invalid resolver registration, and failures
// raised by a resolver itself, which abort the whole Format call.
//
// # Configuration
//
// Customize the formatter with functional options:
//
//	f, err := weneda.New(
//	    weneda.WithDelimiters("{~", "~}"),
//	    weneda.WithEscape("$"),
//	    weneda.WithLogger(logger),
//	)
package weneda
