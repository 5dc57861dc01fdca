package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name LeagueProvider --dir ../usecase --output usecase --outpkg usecasemock --filename league_provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name PlayerProvider --dir ../usecase --output usecase --outpkg usecasemock --filename player_provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name TrendingProvider --dir ../usecase --output usecase --outpkg usecasemock --filename trending_provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name TransactionProvider --dir ../usecase --output usecase --outpkg usecasemock --filename transaction_provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name MetricsSource --dir ../usecase --output usecase --outpkg usecasemock --filename metrics_source_mock.go
