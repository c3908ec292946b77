package model

// Chain is an ordered narrator-ID sequence, oldest transmitter last in
// the raw source ordering. Two records with identical resolved sequences
// share one chain. The ID list is only ever rewritten by an explicit
// correction, never during normal builds.
type Chain struct {
	ID          string `json:"id"`
	NarratorIDs []int  `json:"narratorIds"`
}

// Record is one transmission record. It references exactly one chain and
// never stores narrator names once normalized.
type Record struct {
	ID         string `json:"id"`
	Collection string `json:"collection"`
	Number     int    `json:"number"`
	ChainID    string `json:"chainId"`
}
