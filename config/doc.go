// Package config loads the YAML configuration for an actuator core and
// translates it into the option types of the probe and observe packages.
//
// A complete configuration file:
//
//	registry:
//	  timeout: 10s
//	  parallel: true
//	  coalesce: true
//
//	monitor:
//	  interval: 10s
//
//	observe:
//	  service_name: payments-api
//	  version: 1.4.0
//	  tracing:
//	    enabled: true
//	    exporter: otlp
//	    sample_pct: 0.25
//	  metrics:
//	    enabled: true
//	    exporter: prometheus
//	  logging:
//	    enabled: true
//	    level: info
//
// Every section is optional; missing durations default to 10s and the
// log level defaults to "info". Unknown fields are rejected so typos in
// a deployment manifest fail fast instead of silently applying defaults.
//
// Environment variables are expanded before decoding, so values like
// `service_name: ${SERVICE_NAME}` can be injected at deploy time. A
// `${VAR}` reference to an unset variable is an error; write `$$` for a
// literal dollar sign.
package config
