// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package qacct parses report definitions written in a small language
// that groups ranges of account numbers under titles and sum labels:
//
//	Sales (
//	    3010..3010 => Webshop
//	    3010..4000 => Other sales
//	) => Sum sales
//
//	Other costs (
//	    6000..6010 => Leasing
//	    (
//	        6020..6100 => Office supplies
//	        6100..6200 => Consumables
//	    ) => Sum miscellaneous costs
//	) => Sum other costs
//
// Parse returns the groups as a tree of Span values. A trailer on a
// top-level span is a SumTotal, a trailer on a nested span is a SubTotal.
// Syntax errors are returned as a *ParseError whose Display method renders
// the offending line with a caret under the error.
//
// Groups may be nested to any depth. The default parser is recursive, so
// pathologically deep nesting can exhaust the goroutine stack; use
// WithExplicitStack for untrusted input.
package qacct
