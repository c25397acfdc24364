// Package domain models normalized port-disruption signals and the
// risk-forecast output derived from them.
//
// # Data Sources
//
// Signals arrive from three heterogeneous upstreams, each mapped into the
// common [Signal] shape by an adapter:
//
//	GDELT          daily global-events export, http://data.gdeltproject.org/events/
//	MarineTraffic  per-port RSS feeds (congestion / anomaly notices)
//	ACLED          conflict data (integration point reserved, adapter is a stub)
//
// # GDELT Conventions
//
// The daily export is a headerless tab-separated file of 58 columns. Only a
// subset is consumed:
//
//	col 0   GLOBALEVENTID
//	col 1   SQLDATE          event date as YYYYMMDD
//	col 5   Actor1CountryCode
//	col 26  EventRootCode    coarse taxonomy code; 14=Protest, 18=Disruption
//	col 27  GoldsteinScale   signed intensity in [-10, +10]
//	col 30  Actor1Geo_Fullname
//	col 34  EventBaseCode
//	col 57  SOURCEURL
//
// Rows whose EventRootCode is not 14 or 18 are irrelevant to labor/civil
// disruption at logistics nodes and are dropped. The Goldstein scale is
// bipolar (conflict negative, cooperation positive); severity uses its
// magnitude only: impact = |goldstein| * 5, giving a 0-50 range.
//
// # Unknown Values
//
// "Unknown" is a valid sentinel for port_name and country, not an error.
// Upstream records routinely lack geographic resolution.
//
// # Time Semantics
//
// EventDate is the timestamp of the underlying event; IngestedAt is assigned
// at persistence time. EventDate <= IngestedAt is expected but not enforced,
// upstream clock skew is tolerated.
package domain
