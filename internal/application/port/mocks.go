package port

//go:generate mockgen -source=content_registry.go -destination=mocks/mock_content_registry.go -package=mocks
//go:generate mockgen -source=change_listener.go -destination=mocks/mock_change_listener.go -package=mocks
