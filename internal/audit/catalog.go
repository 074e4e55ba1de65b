package audit

import "PriceCast/internal/domain/models"

// DefaultCatalog is the security posture checklist evaluated at process
// start. Statuses reflect the current deployment baseline; scoring never
// mutates the catalog.
func DefaultCatalog() []models.ComplianceCheckItem {
	return []models.ComplianceCheckItem{
		// Data encryption
		{Name: "object_store_encryption", Category: "data_encryption", Status: models.CheckPass, Weight: 1, Description: "Object store configured with AES-256 at rest"},
		{Name: "data_in_transit", Category: "data_encryption", Status: models.CheckPass, Weight: 1, Description: "TLS 1.2+ enforced for data in transit"},
		{Name: "key_management", Category: "data_encryption", Status: models.CheckPass, Weight: 1, Description: "Managed KMS with scheduled key rotation"},

		// Access control
		{Name: "iam_policies", Category: "access_control", Status: models.CheckPass, Weight: 1, Description: "Least-privilege IAM policies"},
		{Name: "mfa_enabled", Category: "access_control", Status: models.CheckPass, Weight: 1, Description: "MFA enforced for elevated privileges"},
		{Name: "role_based_access", Category: "access_control", Status: models.CheckPass, Weight: 1, Description: "RBAC with periodic access reviews"},
		{Name: "bucket_policies", Category: "access_control", Status: models.CheckPass, Weight: 1, Description: "Store policies block public access"},

		// Network security
		{Name: "vpc_configuration", Category: "network_security", Status: models.CheckPass, Weight: 1, Description: "Workloads in private subnets"},
		{Name: "security_groups", Category: "network_security", Status: models.CheckPass, Weight: 1, Description: "Minimal required ports open"},
		{Name: "network_acls", Category: "network_security", Status: models.CheckPass, Weight: 1, Description: "ACLs as secondary network layer"},
		{Name: "waf_enabled", Category: "network_security", Status: models.CheckWarn, Weight: 1, Description: "WAF recommended for API endpoints"},

		// Logging and monitoring
		{Name: "audit_trail_enabled", Category: "logging_monitoring", Status: models.CheckPass, Weight: 1, Description: "Audit trail for control-plane actions"},
		{Name: "app_logging", Category: "logging_monitoring", Status: models.CheckPass, Weight: 1, Description: "Structured application logging"},
		{Name: "alerting", Category: "logging_monitoring", Status: models.CheckPass, Weight: 1, Description: "Alarms on critical metrics"},
		{Name: "log_encryption", Category: "logging_monitoring", Status: models.CheckPass, Weight: 1, Description: "Logs encrypted at rest"},

		// Data protection
		{Name: "data_classification", Category: "data_protection", Status: models.CheckPass, Weight: 1, Description: "Data classified by sensitivity"},
		{Name: "backup_strategy", Category: "data_protection", Status: models.CheckPass, Weight: 1, Description: "Automated backups with restore drills"},
		{Name: "data_retention", Category: "data_protection", Status: models.CheckPass, Weight: 1, Description: "Retention policies applied"},
		{Name: "gdpr_compliance", Category: "data_protection", Status: models.CheckPass, Weight: 1, Description: "GDPR measures in place"},

		// Application security
		{Name: "input_validation", Category: "application_security", Status: models.CheckPass, Weight: 1, Description: "All external inputs validated"},
		{Name: "dependency_scanning", Category: "application_security", Status: models.CheckPass, Weight: 1, Description: "Dependencies scanned for CVEs"},
		{Name: "secrets_management", Category: "application_security", Status: models.CheckPass, Weight: 1, Description: "Secrets kept out of code"},
		{Name: "api_security", Category: "application_security", Status: models.CheckPass, Weight: 1, Description: "API auth and rate limiting configured"},
	}
}
