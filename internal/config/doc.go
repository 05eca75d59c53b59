// Package config provides configuration parsing for marks projects.
//
// The configuration lives in marks.json or marks.yaml at the project root.
// This package handles loading, saving, and validating it.
//
// # Configuration File Structure
//
//	{
//	  "width": 640,
//	  "layoutHeight": 24,
//	  "symbol": {"shape": "diamond", "size": 10, "fill": "#4682b4"},
//	  "transition": {"duration": "400ms", "ease": "out-cubic"},
//	  "server": {"host": "localhost", "port": 7070, "fps": 60},
//	  "publish": {"bucket": "charts", "prefix": "nightly/", "region": "eu-west-1"}
//	}
//
// The same keys are accepted in YAML.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Address:", cfg.ServerAddress())
package config
