package telemetry

var ToAttribute = toAttribute
