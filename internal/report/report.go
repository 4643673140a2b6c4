// Package report renders dispatch results as JSON documents.
//
// The document keeps the bucket layout used by hook consumers:
//
//	{
//	  "event": "order.created",
//	  "globalBeforeEvent": {"0": ..., "1": ...},
//	  "results": [...],
//	  "globalAfterEvent": {"0": ...},
//	  "error": "..."
//	}
//
// Hook buckets are objects keyed by the hook's insertion index. "error" is
// present only when the dispatch failed.
package report

import (
	"strconv"

	"github.com/tidwall/sjson"

	"github.com/dshills/hookbus/internal/event"
)

// Keys of the report document.
const (
	KeyEvent   = "event"
	KeyBefore  = "globalBeforeEvent"
	KeyResults = "results"
	KeyAfter   = "globalAfterEvent"
	KeyError   = "error"
)

// JSON builds the report for a dispatch of name that produced r and err.
// A nil r is treated as an empty result.
func JSON(name string, r *event.Result, err error) (string, error) {
	if r == nil {
		r = &event.Result{}
	}

	doc, serr := sjson.Set("{}", KeyEvent, name)
	if serr != nil {
		return "", serr
	}

	if doc, serr = setBucket(doc, KeyBefore, r.Before); serr != nil {
		return "", serr
	}

	results := r.Event
	if results == nil {
		results = []any{}
	}
	if doc, serr = sjson.Set(doc, KeyResults, results); serr != nil {
		return "", serr
	}

	if doc, serr = setBucket(doc, KeyAfter, r.After); serr != nil {
		return "", serr
	}

	if err != nil {
		if doc, serr = sjson.Set(doc, KeyError, err.Error()); serr != nil {
			return "", serr
		}
	}
	return doc, nil
}

func setBucket(doc, key string, values []any) (string, error) {
	doc, err := sjson.SetRaw(doc, key, "{}")
	if err != nil {
		return "", err
	}
	for i, v := range values {
		// The colon forces an object key instead of an array index.
		path := key + ".:" + strconv.Itoa(i)
		if doc, err = sjson.Set(doc, path, v); err != nil {
			return "", err
		}
	}
	return doc, nil
}
