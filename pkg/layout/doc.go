// Package layout renders the root document shell shared by every page.
//
// For each request the root layout resolves the reader's color theme from
// the color-theme cookie, applies that theme's style tokens to the html
// element, fills the title and description from the blog constants and
// wraps the page content in body > main:
//
//	<!DOCTYPE html>
//	<html lang="en" data-color-theme="dark" style="--color-background: ...; ...">
//	<head>
//	  <title>Bits &amp; Bytes</title>
//	  <meta name="description" content="A wonderful blog about JavaScript">
//	  ...
//	</head>
//	<body>
//	<main>...children...</main>
//	</body>
//	</html>
//
// Output depends only on the cookie and the children. An unrecognized
// cookie renders the light theme; nothing is written back to the client.
package layout
