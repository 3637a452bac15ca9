// Package serializer provides the format facade of the Redmine client. It turns
// entities from lib/types into XML or JSON documents and back, and decodes the
// paged list envelopes returned by the Redmine REST API.
//
// The package focuses on:
//   - Providing one interface for the two wire formats the server speaks
//   - Type safe entry points without reflection (generic functions over the
//     closed entity catalogue)
//   - A small failure taxonomy that wraps every reader, writer and converter error
//   - Tolerating what servers actually send (missing totals, unknown fields,
//     wrapped and unwrapped JSON entities)
//
// Key Components:
//
//   - ISerializer: Format, content type, converter registry and reader/writer
//     factories. Built with NewXMLSerializer or NewJSONSerializer (or New by name).
//
//   - Serialize / Deserialize: Write and read a single entity. The document is
//     nested under the singular wire key of the entity ("issue", "project", ...).
//
//   - DeserializeToPagedResults / Count: Read a list envelope
//     ({"issues":[...],"total_count":..}) into types.PagedResults, or only its total.
//     The decoder walks Seeking, ReadingMetadata, ReadingItems and Done. Metadata
//     and items may come in any order.
//
//   - SerializationError, DeserializationError, ConfigurationError: The failure
//     taxonomy. The cause stays reachable with errors.Is and errors.As.
//
// Thread Safety:
//
//	Serializers hold immutable configuration only and are safe for concurrent use
//	across multiple goroutines. Every call creates its own reader or writer.
//
// Usage:
//
//	Serializers are typically created once and reused throughout the application:
//
//	  s := serializer.NewJSONSerializer()
//	  data, err := serializer.Serialize(s, &types.Issue{Subject: "Crash on save"})
//	  // ... send data ...
//	  issue, err := serializer.Deserialize[types.Issue](s, body)
//	  page, err := serializer.DeserializeToPagedResults[types.Issue](s, listBody)
package serializer
