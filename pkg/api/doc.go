// Package api serves the placement engine over HTTP.
//
// Every editing endpoint is stateless: the request carries the timeline
// snapshot (in the same JSON document format the CLI reads) and the
// response carries the updated snapshot. When a [store.Store] is configured
// the server also exposes CRUD over stored documents and a replay endpoint
// that edits a stored document in place.
//
//	POST   /v1/preview               {timeline, drag} -> {previews}
//	POST   /v1/drop                  {timeline, drag} -> {action, timeline}
//	POST   /v1/replay                {timeline, drag} -> {previews, action, timeline}
//	POST   /v1/split                 {timeline, itemId, frame} -> {applied, timeline}
//	POST   /v1/trim                  {timeline, itemId, edge, frame} -> {applied, timeline}
//	POST   /v1/render?format=svg     {timeline, preview} -> image bytes
//	GET    /v1/documents             -> [summary]
//	POST   /v1/documents             {name, timeline} -> document
//	GET    /v1/documents/{id}        -> document
//	PUT    /v1/documents/{id}        {name, timeline} -> document
//	DELETE /v1/documents/{id}
//	POST   /v1/documents/{id}/replay {drag} -> {previews, action, timeline}
//
// Errors are JSON objects {"error": {"code", "message"}} whose HTTP status
// follows the error code: invalid input is 400, missing items, tracks and
// documents are 404, everything else is 500.
package api
