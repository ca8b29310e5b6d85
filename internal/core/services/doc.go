// Package services implements the core application logic behind the
// driving ports: the browse controller, session gate, stats aggregator,
// telemetry recorder and ingest flow.
package services
