package main

// IPlayer is one seat at the table. Human seats receive moves from the API;
// AI seats compute them on a worker goroutine.
type IPlayer interface {
	IsHuman() bool
}
