// Package dataset loads the nested category/leaf JSON document that feeds the
// treemap.
//
// # Document Shape
//
// A dataset is a tree of [RawNode] values. Internal nodes carry a name and a
// children array; leaves carry a name, a category and a numeric value:
//
//	{
//	  "name": "Video Game Sales Data Top 100",
//	  "children": [
//	    {
//	      "name": "Wii",
//	      "children": [
//	        {"name": "Wii Sports", "category": "Wii", "value": "82.53"}
//	      ]
//	    }
//	  ]
//	}
//
// Leaf values may be JSON numbers or numeric strings; the public video game
// dataset uses strings. [Value] keeps the text as received so it can be
// displayed verbatim.
//
// # Loading
//
// [Fetch] performs exactly one HTTP GET. A non-success status yields a
// LOAD_ERROR whose cause is a [*ResponseError] carrying the parsed error body.
// Transport failures and malformed JSON are LOAD_ERROR as well. There are no
// retries.
//
// [Load] dispatches on the source string: http(s) URLs go through [Fetch],
// "-" reads stdin, anything else is treated as a file path ([ImportJSON]).
//
// Shape validation (leaf versus internal) is not done here; see the
// hierarchy package.
package dataset
