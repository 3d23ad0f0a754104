// Package repokit holds the storage seams repositories are written against
package repokit

import (
	"pricehunter/internal/platform/store"
)

type (
	// Queryer is the read/write surface for SQL repos
	Queryer = store.RowQuerier
	// TxRunner runs a function inside a transaction
	TxRunner = store.TxRunner
	// Rows is a result set
	Rows = store.Rows
	// Row is a single-row result
	Row = store.Row
	// CommandTag reports rows affected
	CommandTag = store.CommandTag
)
