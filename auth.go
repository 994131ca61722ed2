package sdk

import (
	"context"
	"errors"

	"github.com/reglet-dev/secrets-sdk/go/domain/entities"
	sdkerrors "github.com/reglet-dev/secrets-sdk/go/domain/errors"
)

// AccessTokenLogin authenticates the client with a machine account access
// token. stateFile, when set, lets the library cache the session on disk.
// Any failure is returned as an *AuthError wrapping the cause.
func (c *Client) AccessTokenLogin(ctx context.Context, accessToken string, stateFile *string) error {
	cmd := entities.Command{
		AccessTokenLogin: &entities.AccessTokenLoginRequest{
			AccessToken: accessToken,
			StateFile:   stateFile,
		},
	}

	res, err := run[entities.AccessTokenLoginResponse](ctx, c, cmd)
	if err != nil {
		if errors.Is(err, sdkerrors.ErrClientClosed) {
			return err
		}
		return &sdkerrors.AuthError{Message: authMessage(err), Err: err}
	}
	if !res.Authenticated {
		return &sdkerrors.AuthError{Message: "not authenticated"}
	}

	c.logger.InfoContext(ctx, "access token login succeeded")
	return nil
}

func authMessage(err error) string {
	var ce *sdkerrors.CommandError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return "login failed"
}
