/*
Package ledger implements the card-state transition rules: how a client's
reward balance evolves on each visit or redemption, across the three card
variants.

Operations:

	svc := ledger.NewService(repo, cache, ledger.Config{}, nil)

	// Kiosk visit confirmation
	client, visit, err := svc.ConfirmVisit(ctx, cardNumber)

	// Spend cycle points (points cards)
	client, err = svc.RedeemPoints(ctx, cardNumber, 5)

	// Spend stored value (gift cards)
	client, err = svc.UseBalance(ctx, cardNumber, 12.50)

	// One-time milestone reward (points and discount cards)
	client, err = svc.ConsumeBonusDiscount(ctx, cardNumber)

Rules:

  - Points cards carry a bounded cycle counter and a lifetime counter.
    Each visit increments both; the cycle counter resets to 0 on the
    visit after it reaches the limit.
  - Every 10th visit (counted over the full history) grants a one-time
    bonus discount to points and discount cards.
  - Redemptions never grow the visit history.
  - Balances and point counters never go negative; an operation that
    would violate this fails and leaves the record unchanged.

Every operation is atomic: on failure nothing is persisted. Mutations on
the same card number are serialized by the service; different cards are
independent.
*/
package ledger
