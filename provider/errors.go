package provider

import (
	"errors"
)

var ErrInvalidAuthConfig = errors.New("invalid authentication config supplied")
var ErrMissingQuery = errors.New("query must not be empty")
var ErrConnectFailed = errors.New("connecting to the database failed")
var ErrQueryFailed = errors.New("executing the query failed")
var ErrScanningRowFailed = errors.New("scanning database row failed")
