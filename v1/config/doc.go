// Package config loads the rabbit-consumer configuration from a YAML file
// and the environment.
//
// The file is decoded strictly: unknown top-level keys are rejected, and the
// consumer section is parsed with consumer.ParseConfig. Environment
// variables are then applied on top, so RABBIT_URL, RABBIT_DURABLE,
// RABBIT_QUEUE, ZAP_LOGGER_LEVEL, METRICS_ADDRESS and the other variables
// named in the envconfig tags of each section override the file.
package config
