// Package model defines the data model shared across the credential-request
// pipeline: the configuration encoded into shareable links, the catalog-facing
// credential group and instruction shapes, and the transient submission
// payload produced when a respondent completes the wizard.
package model
