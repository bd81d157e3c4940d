package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/draftleague --output domain/draftleague --outpkg draftleaguemock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Invalidator --dir ../domain/draftleague --output domain/draftleague --outpkg draftleaguemock --filename invalidator_mock.go
