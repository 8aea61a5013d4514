package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/artifact --output domain/artifact --outpkg artifactmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Provider --dir ../usecase --output usecase --outpkg usecasemock --filename provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name NextGameFinder --dir ../usecase --output usecase --outpkg usecasemock --filename next_game_finder_mock.go
