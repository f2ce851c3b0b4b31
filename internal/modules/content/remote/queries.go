package remote

// Named operations against the CMS. Field selections mirror what the site
// actually renders; the bulk query hydrates the whole content cache in one
// round trip.

const SiteConfigQuery = `
  query SiteConfig($id: ID!) {
    siteConfig(where: { id: $id }) {
      siteName
      logo { url width height }
      contactEmail
      themeSettings {
        name
        light {
          bgMain { hex }
          bgCard { hex }
          textMain { hex }
          textMuted { hex }
          accent { hex }
          accentLight { hex }
        }
        dark {
          bgMain { hex }
          bgCard { hex }
          textMain { hex }
          textMuted { hex }
          accent { hex }
          accentLight { hex }
        }
      }
      defaultSeo {
        metaTitle
        metaDescription
        ogImage { url width height }
        noIndex
      }
      mainNavigation { label url type icon openInNewTab }
      footer {
        text { heading subheading }
        navButtons { label url }
        socialButtons { label url icon }
      }
      heroImage { url width height }
      heroText { eyebrow heading subheading }
      heroButtons { label url style }
      authorImage { url width height }
      authorName
      authorBio {
        eyebrow
        heading
        subheading
        body { raw html text }
      }
      authorSocialLinks { label url icon }
      showScrollIndicator
      journalSectionText { heading subheading }
    }
  }
`

const AllPostsQuery = `
  query AllPosts($first: Int, $skip: Int, $where: PostWhereInput, $orderBy: PostOrderByInput) {
    posts(first: $first, skip: $skip, where: $where, orderBy: $orderBy) {
      slug
      title
      excerpt
      category { name slug color { hex } }
      publishDate
      content { text }
      coverImage { url width height }
      author { name nickname image { url } }
      isFeatured
    }
    postsConnection(where: $where) {
      aggregate { count }
    }
  }
`

const PostBySlugQuery = `
  query PostBySlug($slug: String!) {
    post(where: { slug: $slug }) {
      slug
      title
      excerpt
      category { name slug color { hex } }
      publishDate
      content { raw html text }
      coverImage { url width height }
      author {
        name
        nickname
        bio { raw html text }
        image { url }
        socialLinks { label url icon }
      }
      isFeatured
      pdfDocument { url fileName }
      pdfPageLimit
    }
  }
`

const AllCategoriesQuery = `
  query AllCategories {
    categories {
      name
      slug
      color { hex }
    }
  }
`

const PostSlugsQuery = `
  query PostSlugs {
    posts {
      slug
    }
  }
`

const BulkDataQuery = `
  query BulkData($siteConfigId: ID!) {
    siteConfig(where: { id: $siteConfigId }) {
      siteName
      logo { url width height }
      contactEmail
      themeSettings {
        name
        light {
          bgMain { hex }
          bgCard { hex }
          textMain { hex }
          textMuted { hex }
          accent { hex }
          accentLight { hex }
        }
        dark {
          bgMain { hex }
          bgCard { hex }
          textMain { hex }
          textMuted { hex }
          accent { hex }
          accentLight { hex }
        }
      }
      defaultSeo {
        metaTitle
        metaDescription
        ogImage { url width height }
        noIndex
      }
      mainNavigation { label url type icon openInNewTab }
      footer {
        text { heading subheading }
        navButtons { label url }
        socialButtons { label url icon }
      }
      heroImage { url width height }
      heroText { eyebrow heading subheading }
      heroButtons { label url style }
      authorImage { url width height }
      authorName
      authorBio {
        eyebrow
        heading
        subheading
        body { raw html text }
      }
      authorSocialLinks { label url icon }
      showScrollIndicator
      journalSectionText { heading subheading }
    }
    posts {
      slug
      title
      excerpt
      category { name slug color { hex } }
      publishDate
      content { raw html text }
      coverImage { url width height }
      author { name nickname image { url } }
      isFeatured
      pdfDocument { url fileName }
      pdfPageLimit
    }
    categories {
      name
      slug
      color { hex }
    }
    postsConnection {
      aggregate { count }
    }
  }
`
