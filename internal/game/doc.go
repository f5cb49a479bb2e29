// Package game implements the blackjack room state and round engine.
//
// A Store owns every Room for the lifetime of the process. An Engine runs
// the round lifecycle against a Room: StartRound shuffles a fresh deck and
// deals two passes (each player in playerId order, then the dealer), players
// Hit or Stand until every one of them is done, and EndRound plays the
// dealer out and settles bets.
//
// # Basic Usage
//
//	store := game.NewStore(1000, "Room 1")
//	engine := game.NewEngine(randutil.New(42))
//
//	room := store.GetOrCreate("Room 1")
//	room.Join("p1", "Alice", store.StartingCredits())
//	engine.StartRound(room)
//	engine.PlaceBet(room, "p1", 100)
//	engine.Stand(room, "p1")
//	if engine.IsRoundComplete(room) {
//	    results, _ := engine.EndRound(room)
//	}
//
// # Concurrency
//
// Nothing in this package locks. Callers serialise access, which the server
// does by running every mutation on a single hub goroutine.
package game
