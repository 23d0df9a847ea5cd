/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package condition compiles informal SQL WHERE clauses into reusable row
filters, built on the expr-lang library.

A clause produced by the informal converter can be compiled once and then
evaluated against candidate row maps, letting callers pre-filter data before
the formal query runs:

	filter, err := condition.CompileFilter(`("PROTEIN" > 20)`)
	if err != nil {
		log.Fatal(err)
	}
	ok := filter.Evaluate(map[string]interface{}{"PROTEIN": 23.5}) // true

Translation maps double-quoted identifiers to environment lookups, SQL
comparison and logic words to expr syntax, and rewrites LIKE into the
like_match custom function and BETWEEN into a range comparison:

	% - matches any sequence of characters (including empty)
	_ - matches exactly one character

Unknown identifiers evaluate against an open environment, so rows missing a
referenced column simply fail the comparison instead of erroring.
*/
package condition
