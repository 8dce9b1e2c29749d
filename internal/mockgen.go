package internal

//go:generate mockgen -destination=./mocks/bridge_mock.go -package=mocks github.com/vietanh2810/eventdesk/internal/service Bridge
//go:generate mockgen -destination=./mocks/runner_mock.go -package=mocks github.com/vietanh2810/eventdesk/internal/bridge Runner
