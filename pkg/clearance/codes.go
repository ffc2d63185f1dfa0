// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

package clearance

// Stable error codes. These strings are part of the replay format and must
// not change between releases.
const (
	CodeInitNoArgs     = "COE.INIT.NO_ARGS"
	CodeInitBadChannel = "COE.INIT.BAD_CHANNEL"

	CodeGitHubFail      = "COE.ADAPTER.GITHUB_FAIL"
	CodeNPMFail         = "COE.ADAPTER.NPM_FAIL"
	CodePyPIFail        = "COE.ADAPTER.PYPI_FAIL"
	CodeCratesFail      = "COE.ADAPTER.CRATES_FAIL"
	CodeDockerHubFail   = "COE.ADAPTER.DOCKERHUB_FAIL"
	CodeHuggingFaceFail = "COE.ADAPTER.HUGGINGFACE_FAIL"
	CodeDomainFail      = "COE.ADAPTER.DOMAIN_FAIL"

	// Rate limits are reported uniformly per namespace.
	CodeGitHubRateLimited      = "COE.ADAPTER.GITHUB_RATE_LIMITED"
	CodeNPMRateLimited         = "COE.ADAPTER.NPM_RATE_LIMITED"
	CodePyPIRateLimited        = "COE.ADAPTER.PYPI_RATE_LIMITED"
	CodeCratesRateLimited      = "COE.ADAPTER.CRATES_RATE_LIMITED"
	CodeDockerHubRateLimited   = "COE.ADAPTER.DOCKERHUB_RATE_LIMITED"
	CodeHuggingFaceRateLimited = "COE.ADAPTER.HUGGINGFACE_RATE_LIMITED"
	CodeDomainRateLimited      = "COE.ADAPTER.DOMAIN_RATE_LIMITED"

	CodeRenderWriteFail = "COE.RENDER.WRITE_FAIL"
	CodeLockMismatch    = "COE.LOCK.MISMATCH"
)
