/*
Package config reads property configuration from YAML, JSON and dotenv
sources.

# Overview

A Config wraps the decoded map and resolves composite keys through nested
maps, so "carA:speed" finds the speed entry under carA. Accessors never fail:
they return the supplied default when a key is missing or its value cannot
be converted.

	cfg, err := config.FromFile("fleet.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	speed := cfg.Int("carA:speed", 0)
	poll := cfg.Duration("sensors:poll", 5*time.Second)

# Formats

FromFile picks the decoder by extension:
  - .yaml, .yml: gopkg.in/yaml.v3
  - .json: encoding/json
  - .env: github.com/joho/godotenv, producing a flat map of strings

# Flattening

Flatten turns the nested map into leaf entries keyed by composite keys:

	cfg.Flatten() // map["carA:speed"]=42 map["carA:name"]="red"

Config is safe for concurrent reads. It never modifies the wrapped map.
*/
package config
