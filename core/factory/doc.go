// Package factory provides a small generic registry used to instantiate modules
// from configuration. A module is a type string plus a map of raw settings;
// factories decode the settings into typed structs and return the concrete
// implementation. Metrics sinks are built this way:
//
//	metrics:
//	  sinks:
//	    - type: prometheus
//	    - type: influx
//	      conf:
//	        url: http://localhost:8086
//	        bucket: taxisim
package factory
