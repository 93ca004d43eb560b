// Package game implements the Teen Patti round engine.
//
// The main type is Table, which owns the seats (whose chips persist across
// rounds) and a single Round aggregate holding everything that resets when a
// new round starts: hands, pot, stake, dealer and turn.
//
// # Basic Usage
//
//	t, err := game.NewTable(randutil.New(42), game.DefaultTableConfig())
//	if err != nil {
//	    return err // *game.ConfigError
//	}
//	t.StartRound()
//	res := t.Apply(t.ActiveSeat(), game.Call)
//	if !res.Applied {
//	    // res.Err says why; the table is unchanged
//	}
//
// Every command goes through Table.Apply, which checks turn, phase, fold
// status and chips before touching state. Illegal commands are no-ops that
// return a Result carrying one of the Err* sentinels.
//
// # Deterministic Testing
//
// The table draws all randomness from the randutil.Source passed to
// NewTable. Tests pass randutil.New(seed), or stack the deck outright so
// each seat receives a fixed hand:
//
//	t, _ := game.NewTable(rng, cfg, game.WithDeckStacker(game.StackHands(
//	    deck.MustParseCards("As Ah Ad"),
//	    deck.MustParseCards("Ks Kh 7c"),
//	)))
//
// # Architecture
//
// Table delegates to small components:
//   - Ledger: chip movement between seats and the pot
//   - NextSeat: turn rotation that skips folded seats
//   - resolver: last-standing, showdown, split and void outcomes
//   - evaluator.Evaluate: three-card hand ranking
//
// Automated opponents and their thinking delay live in the session package;
// the table itself is synchronous and has no notion of time.
package game
