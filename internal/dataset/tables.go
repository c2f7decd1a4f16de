package dataset

import "leadscope/internal/model"

// defaultIPRecords is the embedded IP-to-organization reference table used
// when no override file is configured. Keyed by exact IP address.
var defaultIPRecords = map[string]model.IPRecord{
	// === Business ===
	"204.79.197.200": {ASN: "AS8075", ASName: "Microsoft Corporation", ASDomain: "microsoft.com", Type: model.IPTypeBusiness},
	"13.107.21.200":  {ASN: "AS8068", ASName: "Microsoft Corporation", ASDomain: "microsoft.com", Type: model.IPTypeBusiness},
	"142.250.80.46":  {ASN: "AS15169", ASName: "Google LLC", ASDomain: "google.com", Type: model.IPTypeBusiness},
	"8.8.8.8":        {ASN: "AS15169", ASName: "Google LLC", ASDomain: "google.com", Type: model.IPTypeBusiness},
	"17.253.144.10":  {ASN: "AS714", ASName: "Apple Inc.", ASDomain: "apple.com", Type: model.IPTypeBusiness},
	"96.43.144.26":   {ASN: "AS14340", ASName: "Salesforce.com, Inc.", ASDomain: "salesforce.com", Type: model.IPTypeBusiness},
	"192.147.130.1":  {ASN: "AS16625", ASName: "Adobe Inc.", ASDomain: "adobe.com", Type: model.IPTypeBusiness},
	"198.45.48.1":    {ASN: "AS2906", ASName: "Netflix, Inc.", ASDomain: "netflix.com", Type: model.IPTypeBusiness},
	"23.227.38.65":   {ASN: "AS62679", ASName: "Shopify, Inc.", ASDomain: "shopify.com", Type: model.IPTypeBusiness},
	"192.102.204.1":  {ASN: "AS4983", ASName: "Intel Corporation", ASDomain: "intel.com", Type: model.IPTypeBusiness},
	// Business records without a matching company profile exercise the
	// fallback synthesis path.
	"37.16.31.1":    {ASN: "AS202651", ASName: "Basecamp, LLC", ASDomain: "basecamp.com", Type: model.IPTypeBusiness},
	"20.43.161.105": {ASN: "AS17054", ASName: "DuckDuckGo, Inc.", ASDomain: "duckduckgo.com", Type: model.IPTypeBusiness},

	// === ISP ===
	"125.20.250.6":  {ASN: "AS9498", ASName: "Bharti Airtel Ltd.", ASDomain: "airtel.com", Type: model.IPTypeISP},
	"73.162.14.1":   {ASN: "AS7922", ASName: "Comcast Cable Communications", ASDomain: "comcast.net", Type: model.IPTypeISP},
	"81.139.52.1":   {ASN: "AS2856", ASName: "British Telecommunications PLC", ASDomain: "bt.com", Type: model.IPTypeISP},
	"90.63.160.1":   {ASN: "AS3215", ASName: "Orange S.A.", ASDomain: "orange.fr", Type: model.IPTypeISP},
	"101.56.100.1":  {ASN: "AS45609", ASName: "Bharti Airtel Mobility", ASDomain: "airtel.com", Type: model.IPTypeISP},
	"187.190.152.1": {ASN: "AS17072", ASName: "Totalplay Telecomunicaciones", ASDomain: "totalplay.com.mx", Type: model.IPTypeISP},

	// === Hosting ===
	"52.95.110.1":    {ASN: "AS16509", ASName: "Amazon.com, Inc. (AWS)", ASDomain: "amazonaws.com", Type: model.IPTypeHosting},
	"3.120.0.1":      {ASN: "AS16509", ASName: "Amazon.com, Inc. (AWS)", ASDomain: "amazonaws.com", Type: model.IPTypeHosting},
	"104.16.132.229": {ASN: "AS13335", ASName: "Cloudflare, Inc.", ASDomain: "cloudflare.com", Type: model.IPTypeHosting},
	"167.71.96.1":    {ASN: "AS14061", ASName: "DigitalOcean, LLC", ASDomain: "digitalocean.com", Type: model.IPTypeHosting},
	"51.38.64.1":     {ASN: "AS16276", ASName: "OVH SAS", ASDomain: "ovh.net", Type: model.IPTypeHosting},
	"95.216.1.1":     {ASN: "AS24940", ASName: "Hetzner Online GmbH", ASDomain: "hetzner.com", Type: model.IPTypeHosting},
}

// defaultCompanies is the embedded domain-to-company reference table.
// Keyed by exact domain.
var defaultCompanies = map[string]model.CompanyProfile{
	"microsoft.com": {
		CompanyName:  "Microsoft Corporation",
		Employees:    "221,000",
		Industry:     "Software",
		Headquarters: "Redmond, Washington, United States",
		Revenue:      "$211.9B",
	},
	"google.com": {
		CompanyName:  "Google LLC",
		Employees:    "182,000",
		Industry:     "Internet Services",
		Headquarters: "Mountain View, California, United States",
		Revenue:      "$305.6B",
	},
	"apple.com": {
		CompanyName:  "Apple Inc.",
		Employees:    "161,000",
		Industry:     "Consumer Electronics",
		Headquarters: "Cupertino, California, United States",
		Revenue:      "$383.3B",
	},
	"salesforce.com": {
		CompanyName:  "Salesforce, Inc.",
		Employees:    "79,000",
		Industry:     "Enterprise Software",
		Headquarters: "San Francisco, California, United States",
		Revenue:      "$34.9B",
	},
	"adobe.com": {
		CompanyName:  "Adobe Inc.",
		Employees:    "29,900",
		Industry:     "Software",
		Headquarters: "San Jose, California, United States",
		Revenue:      "$19.4B",
	},
	"netflix.com": {
		CompanyName:  "Netflix, Inc.",
		Employees:    "13,000",
		Industry:     "Entertainment",
		Headquarters: "Los Gatos, California, United States",
		Revenue:      "$33.7B",
	},
	"shopify.com": {
		CompanyName:  "Shopify, Inc.",
		Employees:    "8,300",
		Industry:     "E-Commerce",
		Headquarters: "Ottawa, Ontario, Canada",
		Revenue:      "$7.1B",
	},
	"intel.com": {
		CompanyName:  "Intel Corporation",
		Employees:    "124,800",
		Industry:     "Semiconductors",
		Headquarters: "Santa Clara, California, United States",
		Revenue:      "$54.2B",
	},
	"oracle.com": {
		CompanyName:  "Oracle Corporation",
		Employees:    "164,000",
		Industry:     "Enterprise Software",
		Headquarters: "Austin, Texas, United States",
		Revenue:      "$53.0B",
	},
	"amazon.com": {
		CompanyName:  "Amazon.com, Inc.",
		Employees:    "1,541,000",
		Industry:     "E-Commerce",
		Headquarters: "Seattle, Washington, United States",
		Revenue:      "$574.8B",
	},
}
