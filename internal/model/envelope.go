package model

// Entry wraps attributes in the `{ id, attributes }` shape consumed by the frontend.
type Entry[T any] struct {
	ID         uint `json:"id"`
	Attributes T    `json:"attributes"`
}

// SingleResponse is the body of single-type endpoints. Data is null when nothing exists yet.
type SingleResponse[T any] struct {
	Data *Entry[T] `json:"data"`
}

// CollectionResponse is the body of collection endpoints.
type CollectionResponse[T any] struct {
	Data []Entry[T]     `json:"data"`
	Meta CollectionMeta `json:"meta"`
}

// CollectionMeta carries the pagination block of a collection response.
type CollectionMeta struct {
	Pagination Pagination `json:"pagination"`
}

// NewSingleResponse builds the envelope for an optional entry.
func NewSingleResponse[T any](entry *Entry[T]) SingleResponse[T] {
	return SingleResponse[T]{Data: entry}
}

// NewCollectionResponse builds the envelope for a page of entries.
func NewCollectionResponse[T any](items []Entry[T], pagination Pagination) CollectionResponse[T] {
	if items == nil {
		items = []Entry[T]{}
	}
	return CollectionResponse[T]{Data: items, Meta: CollectionMeta{Pagination: pagination}}
}
