package services

// Services defined in this package:
// - QuestionService: listing, detail lookup, authoring and voting for
//   poll questions and their choices
// - AuthService: admin login and token issuance
