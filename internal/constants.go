/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent      = "swisspair/0.4.0 (+https://github.com/mikeb26/swisspair)"
	WebCacheBucket = "bopmatic-swisspair-prod-webcache"
)
