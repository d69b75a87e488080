package aws

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/shopspring/decimal"

	"github.com/diillson/aws-daily-cost-report/internal/domain/entity"
)

const (
	// globalRegion is where Cost Explorer and Budgets are served from.
	globalRegion = "us-east-1"

	unblendedCost = "UnblendedCost"
	dateLayout    = "2006-01-02"
)

// Narrow views of the SDK clients, so tests can swap in fakes.
type (
	costExplorerAPI interface {
		GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
	}
	s3API interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
		HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	}
	stsAPI interface {
		GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
	}
	budgetsAPI interface {
		DescribeBudgets(ctx context.Context, params *budgets.DescribeBudgetsInput, optFns ...func(*budgets.Options)) (*budgets.DescribeBudgetsOutput, error)
	}
)

// AWSRepositoryImpl implementa BillingRepository e StorageRepository com cache de clientes.
type AWSRepositoryImpl struct {
	profile string
	region  string

	cfg         *aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
}

// NewAWSRepository creates a repository for the given shared config profile
// and region. Empty values fall back to the SDK's default resolution.
func NewAWSRepository(profile, region string) *AWSRepositoryImpl {
	return &AWSRepositoryImpl{
		profile:     profile,
		region:      region,
		clientCache: make(map[string]interface{}),
	}
}

func (r *AWSRepositoryImpl) getAWSConfig(ctx context.Context) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cfg != nil {
		return *r.cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if r.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(r.profile))
	}
	if r.region != "" {
		opts = append(opts, config.WithRegion(r.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", r.profile, err)
	}
	if cfg.Region == "" {
		cfg.Region = globalRegion
	}

	r.cfg = &cfg
	return cfg, nil
}

func (r *AWSRepositoryImpl) getServiceClient(ctx context.Context, service string) (interface{}, error) {
	r.mu.Lock()
	if client, ok := r.clientCache[service]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.getAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	regionalCfg := cfg.Copy()

	var client interface{}
	switch service {
	case "sts":
		client = sts.NewFromConfig(regionalCfg)
	case "s3":
		client = s3.NewFromConfig(regionalCfg)
	case "costexplorer":
		regionalCfg.Region = globalRegion
		client = costexplorer.NewFromConfig(regionalCfg)
	case "budgets":
		regionalCfg.Region = globalRegion
		client = budgets.NewFromConfig(regionalCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	r.mu.Lock()
	r.clientCache[service] = client
	r.mu.Unlock()

	return client, nil
}

// GetDailyCosts consulta o Cost Explorer para a janela, agrupando por SERVICE e OPERATION.
// Todas as páginas (NextPageToken) são concatenadas.
func (r *AWSRepositoryImpl) GetDailyCosts(ctx context.Context, window entity.Window) ([]entity.DailyCostResult, error) {
	client, err := r.getServiceClient(ctx, "costexplorer")
	if err != nil {
		return nil, err
	}
	ceClient := client.(costExplorerAPI)

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(window.Start.Format(dateLayout)),
			End:   aws.String(window.End.Format(dateLayout)),
		},
		Granularity: ceTypes.GranularityDaily,
		Metrics:     []string{unblendedCost},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("OPERATION")},
		},
	}

	var results []entity.DailyCostResult
	for {
		output, err := ceClient.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("error getting cost and usage for %s: %w", window.StartDate(), err)
		}

		for _, day := range output.ResultsByTime {
			results = append(results, toDailyCostResult(day))
		}

		if aws.ToString(output.NextPageToken) == "" {
			break
		}
		input.NextPageToken = output.NextPageToken
	}

	return results, nil
}

func toDailyCostResult(day ceTypes.ResultByTime) entity.DailyCostResult {
	result := entity.DailyCostResult{
		Groups: make([]entity.CostGroup, 0, len(day.Groups)),
	}
	if day.TimePeriod != nil {
		result.Start = aws.ToString(day.TimePeriod.Start)
		result.End = aws.ToString(day.TimePeriod.End)
	}
	for _, group := range day.Groups {
		// Amount ausente vira string vazia e é rejeitado na agregação
		var amount string
		if metric, ok := group.Metrics[unblendedCost]; ok {
			amount = aws.ToString(metric.Amount)
		}
		result.Groups = append(result.Groups, entity.CostGroup{
			Keys:   group.Keys,
			Amount: amount,
		})
	}
	return result
}

func (r *AWSRepositoryImpl) GetAccountID(ctx context.Context) (string, error) {
	client, err := r.getServiceClient(ctx, "sts")
	if err != nil {
		return "", err
	}
	stsClient := client.(stsAPI)

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID for profile %q: %w", r.profile, err)
	}
	return aws.ToString(result.Account), nil
}

func (r *AWSRepositoryImpl) GetBudgets(ctx context.Context, accountID string) ([]entity.BudgetInfo, error) {
	client, err := r.getServiceClient(ctx, "budgets")
	if err != nil {
		return nil, err
	}
	budgetsClient := client.(budgetsAPI)

	result, err := budgetsClient.DescribeBudgets(ctx, &budgets.DescribeBudgetsInput{
		AccountId: aws.String(accountID),
	})
	if err != nil {
		return nil, fmt.Errorf("error describing budgets for account %s: %w", accountID, err)
	}

	budgetsData := []entity.BudgetInfo{}
	for _, budget := range result.Budgets {
		b := entity.BudgetInfo{Name: aws.ToString(budget.BudgetName)}
		if budget.BudgetLimit != nil {
			b.Limit = parseAmount(budget.BudgetLimit.Amount)
		}
		if budget.CalculatedSpend != nil {
			if budget.CalculatedSpend.ActualSpend != nil {
				b.Actual = parseAmount(budget.CalculatedSpend.ActualSpend.Amount)
			}
			if budget.CalculatedSpend.ForecastedSpend != nil {
				b.Forecast = parseAmount(budget.CalculatedSpend.ForecastedSpend.Amount)
			}
		}
		budgetsData = append(budgetsData, b)
	}

	return budgetsData, nil
}

func parseAmount(s *string) decimal.Decimal {
	d, err := decimal.NewFromString(aws.ToString(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
