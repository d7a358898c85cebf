// Команда loadtest нагружает gRPC API ledger продажами, возвратами и
// аннулированиями и печатает сводку по латентности.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
	grpcsvc "github.com/vladislavdragonenkov/posledger/internal/service/grpc"
	posledgerv1 "github.com/vladislavdragonenkov/posledger/proto/posledger/v1"
)

const scenarioMethod = "scenario"

type loadMode string

const (
	modeSell       loadMode = "sell"
	modeSellRefund loadMode = "sell-refund"
	modeSellVoid   loadMode = "sell-void"
)

type config struct {
	addr           string
	total          int
	totalSet       bool
	duration       time.Duration
	concurrency    int
	connections    int
	timeout        time.Duration
	mode           loadMode
	refundRate     int
	productID      int64
	unitPriceCents int64
	taxBasisPoints int64
	quantity       int64
	paymentMethod  string
	restock        bool
	outputPath     string
}

// ledgerClient: часть posledgerv1.SaleLedgerClient, которую использует нагрузка.
type ledgerClient interface {
	CreateSale(ctx context.Context, req *posledgerv1.CreateSaleRequest, opts ...grpc.CallOption) (*posledgerv1.SaleResponse, error)
	RefundSale(ctx context.Context, req *posledgerv1.RefundSaleRequest, opts ...grpc.CallOption) (*posledgerv1.SaleResponse, error)
	VoidSale(ctx context.Context, req *posledgerv1.VoidSaleRequest, opts ...grpc.CallOption) (*posledgerv1.SaleResponse, error)
	AdjustStock(ctx context.Context, req *posledgerv1.AdjustStockRequest, opts ...grpc.CallOption) (*posledgerv1.ProductResponse, error)
}

type latencySummary struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

type methodReport struct {
	Calls     int64            `json:"calls"`
	Success   int64            `json:"success"`
	Failed    int64            `json:"failed"`
	ErrorRate float64          `json:"error_rate"`
	Codes     map[string]int64 `json:"codes"`
	LatencyMs latencySummary   `json:"latency_ms"`
}

type report struct {
	StartedAt         time.Time               `json:"started_at"`
	DurationSeconds   float64                 `json:"duration_seconds"`
	TotalScenarios    int64                   `json:"total_scenarios"`
	SuccessScenarios  int64                   `json:"success_scenarios"`
	FailedScenarios   int64                   `json:"failed_scenarios"`
	ErrorRate         float64                 `json:"error_rate"`
	RPS               float64                 `json:"rps"`
	SoldCents         int64                   `json:"sold_cents"`
	ScenarioLatencyMs latencySummary          `json:"scenario_latency_ms"`
	Methods           map[string]methodReport `json:"methods"`
}

type methodStats struct {
	calls     int64
	success   int64
	failed    int64
	codes     map[string]int64
	latencies []float64
}

type collector struct {
	mu        sync.Mutex
	methods   map[string]*methodStats
	soldCents int64
}

func newCollector() *collector {
	return &collector{methods: make(map[string]*methodStats)}
}

func (c *collector) record(method string, latency time.Duration, code codes.Code) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats, ok := c.methods[method]
	if !ok {
		stats = &methodStats{codes: make(map[string]int64)}
		c.methods[method] = stats
	}

	stats.calls++
	if code == codes.OK {
		stats.success++
	} else {
		stats.failed++
	}
	stats.codes[code.String()]++
	stats.latencies = append(stats.latencies, float64(latency.Microseconds())/1000.0)
}

func (c *collector) addSold(cents int64) {
	c.mu.Lock()
	c.soldCents += cents
	c.mu.Unlock()
}

func (s *methodStats) report() methodReport {
	codesCopy := make(map[string]int64, len(s.codes))
	for code, count := range s.codes {
		codesCopy[code] = count
	}
	return methodReport{
		Calls:     s.calls,
		Success:   s.success,
		Failed:    s.failed,
		ErrorRate: ratio(s.failed, s.calls),
		Codes:     codesCopy,
		LatencyMs: buildLatencySummary(s.latencies),
	}
}

func (c *collector) buildReport(startedAt time.Time, duration time.Duration) report {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := report{
		StartedAt:       startedAt.UTC(),
		DurationSeconds: duration.Seconds(),
		SoldCents:       c.soldCents,
		Methods:         make(map[string]methodReport, len(c.methods)),
	}
	for name, stats := range c.methods {
		result.Methods[name] = stats.report()
	}

	if scenario, ok := result.Methods[scenarioMethod]; ok {
		result.TotalScenarios = scenario.Calls
		result.SuccessScenarios = scenario.Success
		result.FailedScenarios = scenario.Failed
		result.ErrorRate = scenario.ErrorRate
		result.ScenarioLatencyMs = scenario.LatencyMs
	}
	if duration > 0 {
		result.RPS = float64(result.TotalScenarios) / duration.Seconds()
	}
	return result
}

func parseMode(value string) (loadMode, error) {
	switch loadMode(strings.TrimSpace(value)) {
	case modeSell:
		return modeSell, nil
	case modeSellRefund:
		return modeSellRefund, nil
	case modeSellVoid:
		return modeSellVoid, nil
	default:
		return "", fmt.Errorf("unsupported mode: %s", value)
	}
}

func (c config) validate() error {
	if strings.TrimSpace(c.addr) == "" {
		return errors.New("addr is required")
	}
	if c.duration < 0 {
		return errors.New("duration must be >= 0")
	}
	if c.duration == 0 && c.total <= 0 {
		return errors.New("total must be > 0 when duration is not set")
	}
	if c.duration > 0 && c.totalSet && c.total <= 0 {
		return errors.New("total must be > 0 when explicitly set with duration")
	}
	if c.restock && c.duration > 0 && !c.totalSet {
		return errors.New("restock with duration requires an explicit total")
	}
	if c.concurrency <= 0 {
		return errors.New("concurrency must be > 0")
	}
	if c.connections <= 0 {
		return errors.New("connections must be > 0")
	}
	if c.timeout <= 0 {
		return errors.New("timeout must be > 0")
	}
	if c.productID <= 0 {
		return errors.New("product-id must be > 0")
	}
	if c.unitPriceCents < 0 {
		return errors.New("unit-price-cents must be >= 0")
	}
	if c.taxBasisPoints < 0 {
		return errors.New("tax-bp must be >= 0")
	}
	if c.quantity <= 0 {
		return errors.New("quantity must be > 0")
	}
	if _, err := domain.ParsePaymentMethod(c.paymentMethod); err != nil {
		return fmt.Errorf("payment-method: %w", err)
	}
	if c.refundRate < 0 || c.refundRate > 100 {
		return errors.New("refund-rate must be between 0 and 100")
	}
	return nil
}

// runLoad подменяется в тестах.
var runLoad = runLoadTest

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "loadtest failed: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfg       config
		modeValue string
	)

	cmd := &cobra.Command{
		Use:           "loadtest",
		Short:         "Drive concurrent sales through the ledger gRPC API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := parseMode(modeValue)
			if err != nil {
				return err
			}
			cfg.mode = mode
			cfg.totalSet = cmd.Flags().Changed("total")
			if err := cfg.validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			return runLoad(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.addr, "addr", "localhost:50051", "gRPC target address")
	flags.IntVar(&cfg.total, "total", 400, "total scenarios in count mode; in duration mode only used when explicitly set")
	flags.DurationVar(&cfg.duration, "duration", 0, "optional time-based run duration (e.g. 10m)")
	flags.IntVar(&cfg.concurrency, "concurrency", 40, "number of concurrent workers")
	flags.IntVar(&cfg.connections, "connections", 20, "number of gRPC client connections")
	flags.DurationVar(&cfg.timeout, "timeout", 5*time.Second, "per-RPC timeout")
	flags.StringVar(&modeValue, "mode", string(modeSell), "load mode: sell | sell-refund | sell-void")
	flags.IntVar(&cfg.refundRate, "refund-rate", 0, "refund probability in percent for sell mode (0..100)")
	flags.Int64Var(&cfg.productID, "product-id", 0, "catalog product to sell")
	flags.Int64Var(&cfg.unitPriceCents, "unit-price-cents", 1000, "cart unit price in cents")
	flags.Int64Var(&cfg.taxBasisPoints, "tax-bp", 0, "cart tax rate in basis points")
	flags.Int64Var(&cfg.quantity, "quantity", 1, "units per sale")
	flags.StringVar(&cfg.paymentMethod, "payment-method", string(domain.PaymentMethodCash), "payment method: Cash | Card | Wallet/UPI")
	flags.BoolVar(&cfg.restock, "restock", false, "receive enough stock for the whole run before starting")
	flags.StringVar(&cfg.outputPath, "output", "", "optional JSON report output file path")
	return cmd
}

func runLoadTest(ctx context.Context, cfg config, out io.Writer) error {
	conns := make([]*grpc.ClientConn, 0, cfg.connections)
	clients := make([]ledgerClient, 0, cfg.connections)
	defer func() {
		for _, conn := range conns {
			_ = conn.Close()
		}
	}()
	for i := 0; i < cfg.connections; i++ {
		conn, err := grpc.NewClient(cfg.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return fmt.Errorf("create grpc client connection: %w", err)
		}
		conns = append(conns, conn)
		clients = append(clients, posledgerv1.NewSaleLedgerClient(conn))
	}

	startedAt := time.Now()
	runID := fmt.Sprintf("%d-%d", startedAt.UnixNano(), os.Getpid())

	if cfg.restock {
		if err := restock(ctx, clients[0], cfg, runID); err != nil {
			return err
		}
	}

	result := execute(ctx, clients, cfg, runID)
	printReport(out, result, cfg)
	if cfg.outputPath != "" {
		if err := writeJSONReport(cfg.outputPath, result); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	if result.FailedScenarios > 0 {
		return fmt.Errorf("%d of %d scenarios failed", result.FailedScenarios, result.TotalScenarios)
	}
	return nil
}

// restock приходует остаток под весь прогон одной корректировкой.
func restock(ctx context.Context, client ledgerClient, cfg config, runID string) error {
	callCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	_, err := client.AdjustStock(grpcsvc.WithIdempotencyKey(callCtx, "lt-restock-"+runID), &posledgerv1.AdjustStockRequest{
		ProductId: cfg.productID,
		Delta:     int64(cfg.total) * cfg.quantity,
		Reason:    "loadtest restock",
		Ref:       runID,
	})
	if err != nil {
		return fmt.Errorf("restock product %d: %w", cfg.productID, err)
	}
	return nil
}

func execute(ctx context.Context, clients []ledgerClient, cfg config, runID string) report {
	startedAt := time.Now()
	col := newCollector()
	jobs := make(chan int, cfg.concurrency*2)

	var wg sync.WaitGroup
	for workerID := 0; workerID < cfg.concurrency; workerID++ {
		wg.Add(1)
		go func(cli ledgerClient) {
			defer wg.Done()
			for id := range jobs {
				_ = runScenario(ctx, cli, cfg, id, runID, col)
			}
		}(clients[workerID%len(clients)])
	}

	dispatchJobs(ctx, jobs, cfg)
	wg.Wait()

	return col.buildReport(startedAt, time.Since(startedAt))
}

func dispatchJobs(ctx context.Context, jobs chan<- int, cfg config) {
	defer close(jobs)

	var deadline <-chan time.Time
	if cfg.duration > 0 {
		timer := time.NewTimer(cfg.duration)
		defer timer.Stop()
		deadline = timer.C
	}

	for i := 0; ; i++ {
		if (cfg.duration <= 0 || cfg.totalSet) && i >= cfg.total {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			return
		case jobs <- i:
		}
	}
}

func runScenario(ctx context.Context, client ledgerClient, cfg config, index int, runID string, col *collector) (err error) {
	scenarioStart := time.Now()
	defer func() {
		col.record(scenarioMethod, time.Since(scenarioStart), grpcCode(err))
	}()

	req := &posledgerv1.CreateSaleRequest{
		SaleNumber:    fmt.Sprintf("LT-%s-%06d", runID, index),
		PaymentMethod: cfg.paymentMethod,
		Note:          "loadtest",
		Lines: []*posledgerv1.CartLine{{
			ProductId:          cfg.productID,
			UnitPriceCents:     cfg.unitPriceCents,
			TaxRateBasisPoints: cfg.taxBasisPoints,
			Quantity:           cfg.quantity,
		}},
	}

	var resp *posledgerv1.SaleResponse
	err = timedCall(ctx, cfg.timeout, "CreateSale", fmt.Sprintf("lt-create-%s-%d", runID, index), col, func(ctx context.Context) error {
		var callErr error
		resp, callErr = client.CreateSale(ctx, req)
		return callErr
	})
	if err != nil {
		return err
	}
	saleID := resp.Sale.GetId()
	if saleID == 0 {
		return status.Error(codes.Internal, "create response returned empty sale id")
	}
	col.addSold(resp.Sale.GetTotalCents())

	switch {
	case cfg.mode == modeSellVoid:
		return timedCall(ctx, cfg.timeout, "VoidSale", fmt.Sprintf("lt-void-%s-%d", runID, index), col, func(ctx context.Context) error {
			_, callErr := client.VoidSale(ctx, &posledgerv1.VoidSaleRequest{SaleId: saleID, Note: "loadtest void"})
			return callErr
		})
	case cfg.mode == modeSellRefund || shouldRefundScenario(index, cfg.refundRate):
		return timedCall(ctx, cfg.timeout, "RefundSale", fmt.Sprintf("lt-refund-%s-%d", runID, index), col, func(ctx context.Context) error {
			_, callErr := client.RefundSale(ctx, &posledgerv1.RefundSaleRequest{SaleId: saleID})
			return callErr
		})
	}
	return nil
}

func timedCall(ctx context.Context, timeout time.Duration, method, key string, col *collector, call func(context.Context) error) error {
	start := time.Now()
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := call(grpcsvc.WithIdempotencyKey(callCtx, key))
	col.record(method, time.Since(start), grpcCode(err))
	return err
}

func grpcCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	return status.Code(err)
}

func shouldRefundScenario(index, refundRate int) bool {
	if refundRate <= 0 {
		return false
	}
	if refundRate >= 100 {
		return true
	}
	return index%100 < refundRate
}

func writeJSONReport(path string, result report) error {
	cleanPath := filepath.Clean(path)
	if cleanPath == "." || cleanPath == string(filepath.Separator) {
		return errors.New("output path must point to a file")
	}
	if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return fmt.Errorf("output path must be inside current directory: %s", path)
	}

	// #nosec G304 -- path is an explicit CLI output parameter for local load-test reports.
	file, err := os.Create(cleanPath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func printReport(w io.Writer, result report, cfg config) {
	_, _ = fmt.Fprintln(w, "Load test summary")
	_, _ = fmt.Fprintf(w, "mode=%s run=%s total=%d success=%d failed=%d error_rate=%.4f\n",
		cfg.mode,
		runTarget(cfg),
		result.TotalScenarios,
		result.SuccessScenarios,
		result.FailedScenarios,
		result.ErrorRate,
	)
	_, _ = fmt.Fprintf(w, "duration=%.2fs rps=%.2f sold=%s\n", result.DurationSeconds, result.RPS, domain.FormatMoney(result.SoldCents))
	_, _ = fmt.Fprintf(w, "scenario latency ms: min=%.2f avg=%.2f p50=%.2f p95=%.2f p99=%.2f max=%.2f\n",
		result.ScenarioLatencyMs.Min,
		result.ScenarioLatencyMs.Avg,
		result.ScenarioLatencyMs.P50,
		result.ScenarioLatencyMs.P95,
		result.ScenarioLatencyMs.P99,
		result.ScenarioLatencyMs.Max,
	)

	methodNames := make([]string, 0, len(result.Methods))
	for name := range result.Methods {
		if name != scenarioMethod {
			methodNames = append(methodNames, name)
		}
	}
	sort.Strings(methodNames)
	for _, name := range methodNames {
		stats := result.Methods[name]
		_, _ = fmt.Fprintf(w, "%s: calls=%d success=%d failed=%d error_rate=%.4f p95=%.2fms\n",
			name, stats.Calls, stats.Success, stats.Failed, stats.ErrorRate, stats.LatencyMs.P95)
	}
}

func runTarget(cfg config) string {
	if cfg.duration <= 0 {
		return fmt.Sprintf("count:%d", cfg.total)
	}
	if cfg.totalSet {
		return fmt.Sprintf("duration:%s,max-total:%d", cfg.duration, cfg.total)
	}
	return fmt.Sprintf("duration:%s", cfg.duration)
}

func buildLatencySummary(values []float64) latencySummary {
	if len(values) == 0 {
		return latencySummary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, value := range sorted {
		sum += value
	}

	return latencySummary{
		Min: sorted[0],
		Max: sorted[len(sorted)-1],
		Avg: sum / float64(len(sorted)),
		P50: percentile(sorted, 50),
		P95: percentile(sorted, 95),
		P99: percentile(sorted, 99),
	}
}

// percentile: линейная интерполяция между соседними рангами.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := (p / 100.0) * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}

	weight := rank - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*weight
}

func ratio(failed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(failed) / float64(total)
}
