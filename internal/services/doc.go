// Package services holds the grid proxy business logic.
//
// TransformStatus is a pure function turning a raw grid status into a
// models.GridView. GridService wraps a GridClient and answers every read with a
// fresh grid round trip; nothing is cached, so two calls may see different
// snapshots. Writes (session kill, node drain or removal, queue clear) are
// forwarded and only show up in the next status read.
package services
