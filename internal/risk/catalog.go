package risk

import "PriceCast/internal/domain/models"

// DefaultCatalog is the fixed risk register evaluated at process start.
// Likelihood and impact are on a 1-5 scale; aggregation never mutates it.
func DefaultCatalog() []models.RiskItem {
	return []models.RiskItem{
		// Technical
		{Name: "model_performance_degradation", Category: "technical", Likelihood: 3, Impact: 4},
		{Name: "data_pipeline_failure", Category: "technical", Likelihood: 3, Impact: 3},
		{Name: "api_rate_limiting", Category: "technical", Likelihood: 2, Impact: 3},
		{Name: "infrastructure_scalability", Category: "technical", Likelihood: 3, Impact: 4},

		// Security
		{Name: "data_breach", Category: "security", Likelihood: 2, Impact: 5},
		{Name: "api_vulnerabilities", Category: "security", Likelihood: 3, Impact: 4},
		{Name: "insider_threat", Category: "security", Likelihood: 2, Impact: 4},

		// Business
		{Name: "market_acceptance", Category: "business", Likelihood: 3, Impact: 4},
		{Name: "competitor_response", Category: "business", Likelihood: 4, Impact: 3},
		{Name: "regulatory_compliance", Category: "business", Likelihood: 2, Impact: 5},
		{Name: "revenue_impact", Category: "business", Likelihood: 3, Impact: 4},

		// Operational
		{Name: "service_downtime", Category: "operational", Likelihood: 2, Impact: 4},
		{Name: "team_knowledge_gap", Category: "operational", Likelihood: 3, Impact: 3},
		{Name: "cost_overruns", Category: "operational", Likelihood: 3, Impact: 3},
	}
}
