// Package entitlement exposes the feature access evaluator and upgrade
// flow generator as a JSON HTTP API.
//
// Access denials are returned as 200 responses carrying the decision body;
// only unknown features (404), malformed input (400), and upstream
// dependency failures (502) map to error statuses.
package entitlement
