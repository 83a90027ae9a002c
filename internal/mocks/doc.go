// Package mocks holds mockery-generated testify mocks for the ports interfaces.
//
//go:generate mockery --dir ../ports --name "QuotesSource|HealthChecker|HealthRegistry" --output . --outpkg mocks --with-expecter
package mocks
