//go:build tools

// Пакет tools фиксирует способ генерации кода. Генераторы protoc ставятся вручную:
//
//	go install google.golang.org/protobuf/cmd/protoc-gen-go@v1.36.11
//	go install google.golang.org/grpc/cmd/protoc-gen-go-grpc@v1.5.1
//
// Код proto/posledger/v1 пересобирается из корня репозитория:
//
//	protoc --go_out=. --go_opt=paths=source_relative \
//		--go-grpc_out=. --go-grpc_opt=paths=source_relative \
//		proto/posledger/v1/sale_ledger.proto
package tools
