// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package character

import "context"

// Repository is the port onto the remote character API.
type Repository interface {
	// Search returns one page of characters whose name matches q.Name.
	Search(ctx context.Context, q Query) (Page, error)

	// Get returns a single character or an error wrapping [ErrNotFound].
	Get(ctx context.Context, id int) (Character, error)

	// Ping checks that the remote API answers.
	Ping(ctx context.Context) error
}
