// Package middleware wraps verdict stores with extra behavior, such as
// encrypting cached tapes before they reach Redis.
package middleware
