/*
Package wire provides the format-neutral token layer used by the entity converters.

The package focuses on:
  - A pull reader (IReader) over one XML or JSON document with a cursor that always
    sits on exactly one value
  - A push writer (IWriter) that emits elements, attributes and arrays for XML and
    objects, properties and arrays for JSON from the same call sequence
  - Primitive helpers that read and write integers, booleans, decimals and dates with
    invariant formatting and tolerant parsing

Key Components:
  - NewXMLReader / NewXMLWriter: implementation on top of encoding/xml tokens
  - NewJSONReader / NewJSONWriter: implementation on top of the json-iterator streaming API
  - Scalar: a leaf value with its wire kind (string, number, bool, date, date-time, empty)
  - Read and Write primitives and the Parse helpers

Mapping between the two formats:

	XML                                 JSON
	<issue id="1">                      {"issue": {"id": 1,
	  <subject>x</subject>                "subject": "x",
	  <watchers type="array">             "watchers": [
	    <user id="2" name="a"/>             {"id": 2, "name": "a"}
	  </watchers>                         ]
	</issue>                            }}

Thread Safety:
Readers and writers are not safe for concurrent use. Create one per document.
*/
package wire
