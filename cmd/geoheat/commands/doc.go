// Package commands defines the geoheat CLI and wires the overlay pipeline for
// subcommands.
//
// Commands
//
//   - aggregate  Print the latest value per group and region
//   - export     Write the overlay as an EPSG:3857 GeoJSON FeatureCollection
//   - render     Draw the overlay to a PNG or SVG image
//   - report     Write an HTML bar chart of region values
//   - view       Browse the overlay in the terminal
//
// # Implementation
//
// The root command loads the YAML config, applies flag overrides and reads
// the region geometry before any subcommand runs. Subcommands share that
// state through a single overlay panel.
package commands
