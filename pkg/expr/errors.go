package expr

import "github.com/pkg/errors"

// Error kinds surfaced by Sanitize, Tokenize, Parse and Eval. Returned errors
// wrap one of these with context; match them with errors.Is.
var (
	ErrEmpty            = errors.New("empty expression")
	ErrInvalidCharacter = errors.New("invalid character")

	ErrInvalidToken          = errors.New("invalid token")
	ErrUnsupportedIdentifier = errors.New("unsupported identifier")

	ErrUnexpectedToken = errors.New("unexpected token")
	ErrTrailingTokens  = errors.New("unexpected trailing tokens")

	ErrUnknownFunction    = errors.New("unknown function")
	ErrUnknownNode        = errors.New("unknown node")
	ErrArity              = errors.New("wrong number of arguments")
	ErrNonIntegerArgument = errors.New("expected integer argument")
	ErrNegativeArgument   = errors.New("expected non-negative argument")
	ErrDivisionByZero     = errors.New("division by zero")
	ErrInvalidBase        = errors.New("base must be >= 2")
	ErrExponentRange      = errors.New("exponent out of range")
)
