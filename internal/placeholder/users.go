package placeholder

import (
	"context"

	cl "albumviewer/pkg/catelog"
)

const pathUsers = "/users"

// ListUsers fetches every user. The returned users have no albums yet.
func (p *Placeholder) ListUsers(ctx context.Context) ([]cl.User, error) {
	const op = "list users"
	endpoint := p.endpoint(pathUsers, nil)

	var raw []rawUser
	if err := p.get(ctx, op, endpoint, &raw); err != nil {
		return nil, err
	}

	users, err := toUsers(op, raw)
	if err != nil {
		return nil, &cl.FetchError{Op: op, URL: endpoint, Err: err}
	}
	return users, nil
}
