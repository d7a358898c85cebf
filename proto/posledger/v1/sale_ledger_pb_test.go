package posledgerv1

import (
	"reflect"
	"strings"
	"testing"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

func TestSaleStatusGeneratedHelpers(t *testing.T) {
	s := SaleStatus_SALE_STATUS_REFUNDED
	if got := s.Enum(); got == nil || *got != s {
		t.Fatalf("Enum() mismatch: got %v want %v", got, s)
	}
	if got := s.String(); got != "SALE_STATUS_REFUNDED" {
		t.Fatalf("String() = %q", got)
	}
	if s.Type() == nil {
		t.Fatalf("Type() must not be nil")
	}
	if s.Descriptor() == nil {
		t.Fatalf("Descriptor() must not be nil")
	}
	if s.Number() != 2 {
		t.Fatalf("Number() = %d, want 2", s.Number())
	}
	_, _ = s.EnumDescriptor()

	unknown := SaleStatus(999)
	if unknown.String() == "" {
		t.Fatalf("unknown enum string must not be empty")
	}
}

func TestGeneratedMessageHelpers(t *testing.T) {
	line := &SaleLine{ProductId: 1, ProductName: "Pen", Sku: "PEN-1", Quantity: 2, UnitPriceCents: 500, LineTotalCents: 1000}
	sale := &Sale{Id: 1, SaleNumber: "INV-20261016-000001", Status: SaleStatus_SALE_STATUS_COMPLETED, Lines: []*SaleLine{line}}
	messages := []any{
		&CartLine{ProductId: 1, UnitPriceCents: 500, Quantity: 2},
		line,
		sale,
		&Product{Id: 1, Sku: "PEN-1", Name: "Pen", LowStock: true},
		&CreateSaleRequest{PaymentMethod: "cash", OrderDiscount: "10%", Lines: []*CartLine{{ProductId: 1, Quantity: 1}}},
		&SaleResponse{Sale: sale},
		&GetSaleRequest{SaleId: 1},
		&ListSalesRequest{FromUnixMs: 1, ToUnixMs: 2, PaymentMethods: []string{"cash"}, Statuses: []SaleStatus{SaleStatus_SALE_STATUS_VOIDED}, Limit: 10},
		&ListSalesResponse{Sales: []*Sale{sale}},
		&RefundSaleRequest{SaleId: 1},
		&VoidSaleRequest{SaleId: 1, Note: "mistake"},
		&AdjustStockRequest{ProductId: 1, Delta: 5, Reason: "restock"},
		&UpdateProductRequest{ProductId: 1, Name: "Pen", UnitPriceCents: 700},
		&ProductResponse{Product: &Product{Id: 1}},
		&LowStockCountRequest{},
		&LowStockCountResponse{Count: 3},
	}

	for _, msg := range messages {
		t.Run(reflect.TypeOf(msg).Elem().Name(), func(t *testing.T) {
			exerciseGeneratedMessage(t, msg)
		})
	}
}

func TestGeneratedMessagesSurviveWireRoundTrip(t *testing.T) {
	in := &Sale{
		Id:              7,
		SaleNumber:      "INV-20261016-000007",
		TimestampUnixMs: 1792180741000,
		SubtotalCents:   1000,
		TaxCents:        50,
		TotalCents:      1050,
		PaymentMethod:   "card",
		Status:          SaleStatus_SALE_STATUS_VOIDED,
		Note:            "gift wrap",
		Lines:           []*SaleLine{{ProductId: 3, Sku: "INK-1", Quantity: 2, UnitPriceCents: 500, TaxRateBasisPoints: 500}},
	}

	raw, err := proto.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Sale
	if err := proto.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !proto.Equal(in, &out) {
		t.Fatalf("round trip mismatch: %v != %v", in, &out)
	}

	js, err := protojson.Marshal(in)
	if err != nil {
		t.Fatalf("protojson: %v", err)
	}
	if !strings.Contains(string(js), `"status":"SALE_STATUS_VOIDED"`) || !strings.Contains(string(js), `"saleNumber":"INV-20261016-000007"`) {
		t.Fatalf("unexpected json: %s", js)
	}
}

func TestFileDescriptorMetadata(t *testing.T) {
	fd := File_proto_posledger_v1_sale_ledger_proto
	if got := fd.Path(); got != "proto/posledger/v1/sale_ledger.proto" {
		t.Fatalf("descriptor path = %q", got)
	}
	if got := fd.Package(); got != "posledger.v1" {
		t.Fatalf("package = %q", got)
	}
	if fd.Messages().Len() != 16 {
		t.Fatalf("expected 16 message descriptors, got %d", fd.Messages().Len())
	}
	if fd.Enums().Len() != 1 {
		t.Fatalf("expected 1 enum descriptor, got %d", fd.Enums().Len())
	}
	svc := fd.Services().ByName("SaleLedger")
	if svc == nil {
		t.Fatalf("SaleLedger service descriptor missing")
	}
	if svc.Methods().Len() != len(SaleLedger_ServiceDesc.Methods) {
		t.Fatalf("descriptor has %d methods, service desc %d", svc.Methods().Len(), len(SaleLedger_ServiceDesc.Methods))
	}
	method := svc.Methods().ByName("UpdateProduct")
	if method == nil || method.Input().FullName() != "posledger.v1.UpdateProductRequest" || method.Output().FullName() != "posledger.v1.ProductResponse" {
		t.Fatalf("unexpected UpdateProduct descriptor: %v", method)
	}
	status := fd.Messages().ByName("Sale").Fields().ByName("status")
	if status.Enum().FullName() != "posledger.v1.SaleStatus" {
		t.Fatalf("Sale.status enum = %s", status.Enum().FullName())
	}
}

func exerciseGeneratedMessage(t *testing.T, msg any) {
	t.Helper()

	v := reflect.ValueOf(msg)

	callNoArg(t, v, "String")
	callNoArg(t, v, "ProtoReflect")
	callNoArg(t, v, "Descriptor")
	callNoArg(t, v, "Reset")
	callGetterMethods(t, v)

	nilReceiver := reflect.Zero(v.Type())
	callNoArg(t, nilReceiver, "ProtoReflect")
	callNoArg(t, nilReceiver, "Descriptor")
	callGetterMethods(t, nilReceiver)
}

func callGetterMethods(t *testing.T, v reflect.Value) {
	t.Helper()

	typ := v.Type()
	for i := 0; i < typ.NumMethod(); i++ {
		m := typ.Method(i)
		if !strings.HasPrefix(m.Name, "Get") {
			continue
		}
		if m.Type.NumIn() != 1 || m.Type.NumOut() != 1 {
			continue
		}
		callNoArg(t, v, m.Name)
	}
}

func callNoArg(t *testing.T, v reflect.Value, method string) {
	t.Helper()

	mv := v.MethodByName(method)
	if !mv.IsValid() {
		return
	}
	if mv.Type().NumIn() != 0 {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("method %s panicked: %v", method, r)
		}
	}()

	_ = mv.Call(nil)
}
